package resolve

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"proplines/internal/pkg/config"
)

// Key is the canonical comparable form of a raw player name: a sequence of
// folded tokens plus an optional team token recovered from a clan tag.
// Recomputed deterministically from raw input; an empty key never matches.
type Key struct {
	Tokens []string
	Team   string // canonical team name from a recognized tag, if any
}

// String joins the tokens into the flat form used for edit-distance scoring.
func (k Key) String() string {
	return strings.Join(k.Tokens, " ")
}

// IsEmpty reports whether the key carries no usable tokens.
func (k Key) IsEmpty() bool {
	return len(k.Tokens) == 0
}

// Normalizer canonicalizes free-text names into comparable keys. It is the
// single source of truth for name canonicalization: the index builder, the
// matcher and the override loader all go through the same instance.
type Normalizer struct {
	teamAliases   map[string]string // folded alias or full name -> canonical team name
	playerAliases map[string]string // folded raw name -> canonical player name
}

// Default tag-to-team mappings for the VCT scene. Config aliases extend and
// override these.
var defaultTeamAliases = map[string]string{
	"sen":  "Sentinels",
	"nrg":  "NRG",
	"fnc":  "Fnatic",
	"tl":   "Team Liquid",
	"prx":  "Paper Rex",
	"eg":   "Evil Geniuses",
	"100t": "100 Thieves",
}

// NewNormalizer builds a normalizer with the default alias tables merged with
// config-supplied ones.
func NewNormalizer(aliases config.AliasConfig) *Normalizer {
	n := &Normalizer{
		teamAliases:   make(map[string]string, len(defaultTeamAliases)+2*len(aliases.Teams)),
		playerAliases: make(map[string]string, len(aliases.Players)),
	}
	for tag, team := range defaultTeamAliases {
		n.addTeamAlias(tag, team)
	}
	for tag, team := range aliases.Teams {
		n.addTeamAlias(tag, team)
	}
	for raw, canonical := range aliases.Players {
		n.playerAliases[fold(raw)] = canonical
	}
	return n
}

func (n *Normalizer) addTeamAlias(tag, team string) {
	n.teamAliases[fold(tag)] = team
	// The full name maps to itself so NormalizeTeam("100 Thieves") and
	// NormalizeTeam("100T") agree.
	n.teamAliases[fold(team)] = team
}

// foldTransform strips combining marks after NFD decomposition, so accented
// characters compare equal to their ASCII base form.
var foldTransform = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func fold(s string) string {
	out, _, err := transform.String(foldTransform, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return out
}

// Normalize converts a raw player name into a Key. Pure and total: any string
// input, including empty, produces a key without error. Applied rules, in
// order: player alias resolution, diacritic folding and lowercasing, clan tag
// stripping (bracketed, leading team token, trailing ".tag"), punctuation
// stripping except internal hyphens, whitespace collapsing, tokenization.
func (n *Normalizer) Normalize(raw string) Key {
	s := fold(raw)
	if alias, ok := n.playerAliases[s]; ok {
		s = fold(alias)
	}

	var key Key
	s = n.stripBracketTags(s, &key)

	tokens := tokenize(s)
	tokens = n.stripTeamTokens(tokens, &key)
	key.Tokens = tokens
	return key
}

// stripBracketTags removes [SEN]- and (SEN)-style tags, remembering the team
// when the tag is a known alias.
func (n *Normalizer) stripBracketTags(s string, key *Key) string {
	var b strings.Builder
	for {
		open := strings.IndexAny(s, "[(")
		if open < 0 {
			b.WriteString(s)
			break
		}
		closer := byte(']')
		if s[open] == '(' {
			closer = ')'
		}
		end := strings.IndexByte(s[open:], closer)
		if end < 0 {
			b.WriteString(s)
			break
		}
		tag := strings.TrimSpace(s[open+1 : open+end])
		if team, ok := n.teamAliases[tag]; ok && key.Team == "" {
			key.Team = team
		}
		b.WriteString(s[:open])
		b.WriteByte(' ')
		s = s[open+end+1:]
	}
	return b.String()
}

// stripTeamTokens drops a leading or trailing team-alias token, covering the
// "SEN TenZ" and "TenZ.SEN" forms (the dot separator has already become a
// token boundary). At least one token is kept so a player who happens to
// share a name with a tag is not erased.
func (n *Normalizer) stripTeamTokens(tokens []string, key *Key) []string {
	if len(tokens) > 1 {
		if team, ok := n.teamAliases[tokens[0]]; ok {
			if key.Team == "" {
				key.Team = team
			}
			tokens = tokens[1:]
		}
	}
	if len(tokens) > 1 {
		if team, ok := n.teamAliases[tokens[len(tokens)-1]]; ok {
			if key.Team == "" {
				key.Team = team
			}
			tokens = tokens[:len(tokens)-1]
		}
	}
	return tokens
}

// tokenize splits a folded string into tokens, dropping punctuation except
// hyphens between alphanumerics.
func tokenize(s string) []string {
	var b strings.Builder
	b.Grow(len(s))
	runesIn := []rune(s)
	for i, r := range runesIn {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '-' && i > 0 && i+1 < len(runesIn) &&
			isAlnum(runesIn[i-1]) && isAlnum(runesIn[i+1]):
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Fields(b.String())
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// NormalizeTeam canonicalizes a team name or tag for comparison: alias
// resolution first, then folding and whitespace collapsing.
func (n *Normalizer) NormalizeTeam(raw string) string {
	s := fold(raw)
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	if team, ok := n.teamAliases[s]; ok {
		return fold(team)
	}
	return s
}

// CanonicalPlayer returns the preferred display spelling for a raw player
// name: the alias table entry when one exists, the trimmed raw name otherwise.
func (n *Normalizer) CanonicalPlayer(raw string) string {
	if alias, ok := n.playerAliases[fold(raw)]; ok {
		return alias
	}
	return strings.TrimSpace(raw)
}
