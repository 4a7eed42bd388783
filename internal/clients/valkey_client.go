package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

var (
	valkeyInstance *ValkeyClient
	valkeyOnce     sync.Once
)

type ValkeyClient struct {
	Client valkey.Client
}

const (
	VALKEY_SEEN_URLS_KEY = "mexbrief:seen_urls"

	// Articles cycle out of news feeds within days; a week of dedup
	// history is enough to never re-summarize the same piece.
	seenURLTTLSeconds = 7 * 24 * 3600
)

// InitValkey connects the optional cross-run URL dedup cache. Returns
// nil when VALKEY_INIT_ADDRESS is unset; the pipeline then dedupes
// within the run only.
func InitValkey() *ValkeyClient {
	valkeyOnce.Do(func() {
		valkeyAddr := os.Getenv("VALKEY_INIT_ADDRESS")
		if valkeyAddr == "" {
			slog.Info("[ValkeyClient] VALKEY_INIT_ADDRESS not set, cross-run dedup disabled")
			return
		}

		opts := valkey.ClientOption{
			InitAddress:      []string{valkeyAddr},
			Password:         os.Getenv("VALKEY_PASSWORD"),
			ConnWriteTimeout: 5 * time.Second,
			SelectDB:         0,
		}
		if os.Getenv("VALKEY_TLS") == "true" {
			opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
		}

		client, err := valkey.NewClient(opts)
		if err != nil {
			slog.Warn("[ValkeyClient] failed to create client, cross-run dedup disabled",
				slog.String("error", err.Error()))
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
		defer cancel()

		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			slog.Warn("[ValkeyClient] failed to ping, cross-run dedup disabled",
				slog.String("error", err.Error()))
			client.Close()
			return
		}

		slog.Info("[ValkeyClient] Successfully connected to valkey")
		valkeyInstance = &ValkeyClient{Client: client}
	})
	return valkeyInstance
}

func CloseValkey() {
	if valkeyInstance != nil {
		valkeyInstance.Client.Close()
	}
}

// MarkSeen records a URL in the dedup set and refreshes its TTL.
func (vc *ValkeyClient) MarkSeen(ctx context.Context, url string) error {
	completed := []valkey.Completed{
		vc.Client.B().Sadd().Key(VALKEY_SEEN_URLS_KEY).Member(url).Build(),
		vc.Client.B().Expire().Key(VALKEY_SEEN_URLS_KEY).Seconds(seenURLTTLSeconds).Build(),
	}
	for _, res := range vc.Client.DoMulti(ctx, completed...) {
		if err := res.Error(); err != nil {
			return fmt.Errorf("[ValkeyClient] mark seen: %w", err)
		}
	}
	return nil
}

// IsSeen reports whether a URL was collected in a previous run.
// Errors degrade to false so a cache outage never blocks collection.
func (vc *ValkeyClient) IsSeen(ctx context.Context, url string) bool {
	res := vc.Client.Do(ctx, vc.Client.B().Sismember().Key(VALKEY_SEEN_URLS_KEY).Member(url).Build())
	if err := res.Error(); err != nil {
		slog.Warn("[ValkeyClient] seen lookup failed",
			slog.String("error", err.Error()))
		return false
	}
	ok, err := res.AsBool()
	if err != nil {
		return false
	}
	return ok
}
