package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/stardevs/community-backend/internal/kvstore"
)

const (
	idPrefixLen    = 3
	idPrefixFiller = "X"
)

// IDGenerator derives report ids such as "MIL007" from the reporter's name and
// a persisted counter.
//
// The counter read, the counter write and the report write that follows are
// not atomic. Two callers interleaving on the same store can receive the same
// sequence number.
type IDGenerator struct {
	store kvstore.Store
	key   string
}

func NewIDGenerator(store kvstore.Store, keys kvstore.Keys) *IDGenerator {
	return &IDGenerator{store: store, key: keys.Counter}
}

// Next advances the counter and returns the id for a report filed by name.
func (g *IDGenerator) Next(name string) (string, error) {
	var counter int
	if _, err := kvstore.ReadJSON(g.store, g.key, &counter); err != nil {
		return "", err
	}
	if counter < 0 {
		counter = 0
	}
	counter++
	if err := kvstore.WriteJSON(g.store, g.key, counter); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%03d", IDPrefix(name), counter), nil
}

// current returns the last issued sequence number.
func (g *IDGenerator) current() (int, error) {
	var counter int
	_, err := kvstore.ReadJSON(g.store, g.key, &counter)
	return counter, err
}

// IDPrefix returns the three-letter id prefix for a display name.
// Discord tags ("milo#0001") are cut at '#', other names at the first space;
// only ASCII letters count and short results are padded with 'X'.
func IDPrefix(name string) string {
	if i := strings.Index(name, "#"); i >= 0 {
		name = name[:i]
	} else if fields := strings.Fields(name); len(fields) > 0 {
		name = fields[0]
	}

	var b strings.Builder
	for _, r := range name {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
		if b.Len() == idPrefixLen {
			break
		}
	}
	prefix := b.String()
	return prefix + strings.Repeat(idPrefixFiller, idPrefixLen-len(prefix))
}
