package mapper

import (
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
)

// DefaultFuzzyThreshold is the minimum Jaro-Winkler score for a fuzzy name
// match when the query shares no phonetic code with the room name.
const DefaultFuzzyThreshold = 0.85

// phoneticThreshold is the minimum score for a phonetically matched name.
const phoneticThreshold = 0.70

// FindByTitle returns the rooms whose name equals name, ignoring case and
// surrounding space. When description is non-empty, a room must also hold a
// matching description variant. Results follow registration order.
func (z *Zone) FindByTitle(name, description string) []*Room {
	name = normalize(name)
	description = normalize(description)
	var out []*Room
	for _, id := range z.order {
		room := z.rooms[id]
		if normalize(room.Name) != name {
			continue
		}
		if description != "" && !hasDescription(room, description) {
			continue
		}
		out = append(out, room)
	}
	return out
}

func hasDescription(room *Room, description string) bool {
	for _, d := range room.Descriptions {
		if normalize(d) == description {
			return true
		}
	}
	return false
}

// FindByNote returns the rooms carrying label as a note alias. Notes may
// hold several aliases separated by "|"; comparison ignores case.
func (z *Zone) FindByNote(label string) []*Room {
	label = normalize(label)
	if label == "" {
		return nil
	}
	var out []*Room
	for _, id := range z.order {
		room := z.rooms[id]
		if roomHasNote(room, label) {
			out = append(out, room)
		}
	}
	return out
}

func roomHasNote(room *Room, label string) bool {
	for _, note := range room.Notes {
		for _, alias := range strings.Split(note, "|") {
			if normalize(alias) == label {
				return true
			}
		}
	}
	return false
}

// Match is a fuzzy search hit.
type Match struct {
	Room     *Room
	Score    float64
	Phonetic bool
}

// Search ranks rooms by similarity between query and room name. Names that
// share a Double Metaphone code with the query are accepted from a lower
// score and rank ahead of plain Jaro-Winkler hits. A threshold <= 0 uses
// DefaultFuzzyThreshold. Equal scores keep registration order.
func (z *Zone) Search(query string, threshold float64) []Match {
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}
	q := normalize(query)
	if q == "" {
		return nil
	}
	qTokens := strings.Fields(q)
	qCodes := phoneticCodes(qTokens)

	var out []Match
	for _, id := range z.order {
		room := z.rooms[id]
		name := normalize(room.Name)
		if name == "" {
			continue
		}
		nTokens := strings.Fields(name)
		score := bestScore(qTokens, nTokens, q, name)
		phonetic := codesOverlap(qCodes, phoneticCodes(nTokens))
		if phonetic && score >= phoneticThreshold || score >= threshold {
			out = append(out, Match{Room: room, Score: score, Phonetic: phonetic})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Phonetic != out[j].Phonetic {
			return out[i].Phonetic
		}
		return out[i].Score > out[j].Score
	})
	return out
}

// Resolve maps a user query to a single room: an exact room ID first, then a
// note alias, then an exact name, then the best fuzzy name match.
//
// Postcondition: Returns (room, true) on a hit, or (nil, false).
func (z *Zone) Resolve(query string, threshold float64) (*Room, bool) {
	if room, ok := z.GetRoom(strings.TrimSpace(query)); ok {
		return room, true
	}
	if rooms := z.FindByNote(query); len(rooms) > 0 {
		return rooms[0], true
	}
	if rooms := z.FindByTitle(query, ""); len(rooms) > 0 {
		return rooms[0], true
	}
	if matches := z.Search(query, threshold); len(matches) > 0 {
		return matches[0].Room, true
	}
	return nil, false
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// phoneticCodes returns the Double Metaphone codes of the joined tokens.
// Codes are computed over the whole name so that a shared leading word such
// as "the" does not count as a phonetic match.
func phoneticCodes(tokens []string) map[string]struct{} {
	codes := make(map[string]struct{}, 2)
	p, s := matchr.DoubleMetaphone(strings.Join(tokens, ""))
	if p != "" {
		codes[p] = struct{}{}
	}
	if s != "" {
		codes[s] = struct{}{}
	}
	return codes
}

func codesOverlap(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for code := range a {
		if _, ok := b[code]; ok {
			return true
		}
	}
	return false
}

// bestScore is the higher Jaro-Winkler score of the full strings and the
// space-stripped strings. Token pairs are not scored: room names share too
// many common words for a single token to identify a room.
func bestScore(qTokens, nTokens []string, q, name string) float64 {
	score := matchr.JaroWinkler(q, name, false)
	if len(qTokens) > 1 || len(nTokens) > 1 {
		if s := matchr.JaroWinkler(strings.Join(qTokens, ""), strings.Join(nTokens, ""), false); s > score {
			score = s
		}
	}
	return score
}
