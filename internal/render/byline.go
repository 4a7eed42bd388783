package render

import (
	"crypto/md5"
	"math/big"
	"time"

	"github.com/adriansoto/mexbrief/config"
)

// PickByline returns the pen name and title for a given date. The pick
// rotates daily but is a pure function of the calendar date, so every
// render within one day agrees without any shared state.
func PickByline(date time.Time) (name, title string) {
	sum := md5.Sum([]byte(date.Format("2006-01-02")))
	seed := new(big.Int).SetBytes(sum[:])

	nameCount := big.NewInt(int64(len(config.AuthorNames)))
	titleCount := big.NewInt(int64(len(config.AuthorTitles)))

	nameIdx := new(big.Int).Mod(seed, nameCount).Int64()
	titleIdx := new(big.Int).Mod(new(big.Int).Div(seed, nameCount), titleCount).Int64()

	return config.AuthorNames[nameIdx], config.AuthorTitles[titleIdx]
}

// Byline renders the combined "Name, Title" form used under the editor
// note.
func Byline(date time.Time) string {
	name, title := PickByline(date)
	return name + ", " + title
}
