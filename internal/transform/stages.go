package transform

import (
	"regexp"
	"strings"

	"github.com/ppiankov/humanizer/internal/lexicon"
	"github.com/ppiankov/humanizer/internal/util"
)

const (
	negationFactor = 0.6

	splitMinLength   = 100 // Sentences longer than this may be split
	mergeMaxLength   = 30  // Sentences shorter than this may be merged
	minBreakOffset   = 20  // A break point must sit further in than this
	clauseBreakLimit = 0.6 // Comma and conjunction breaks start before this share of the sentence
	spaceBreakLimit  = 0.5

	framingMinLength  = 20
	midFramingFactor  = 0.5
	midFramingMinSize = 3
)

var (
	clauseBreaks = []string{", ", " and ", " but ", " or "}
	firstPerson  = regexp.MustCompile(`(?i)\b(?:i|me|my|mine|myself)\b`)
)

// substitutePhrases swaps formal phrases for casual alternatives in one
// pass, so a phrase is never also matched by a shorter key inside it
func (r *run) substitutePhrases(text string) string {
	re := r.lex.ReplacementPattern
	if re == nil {
		return text
	}
	return re.ReplaceAllStringFunc(text, func(match string) string {
		alts := r.lex.Replacements[strings.ToLower(match)]
		hit, choice := r.pick(stagePhrases, match, r.cfg.WordReplacement, len(alts))
		if !hit {
			return match
		}
		r.stats.PhraseSubstitutions++
		return matchCase(match, alts[choice])
	})
}

// injectFillers opens sentences with casual connectors. The first sentence
// is left for framing. A revisit pass runs over already rewritten text: it
// includes the first sentence and skips sentences that open casually.
func (r *run) injectFillers(text string, p float64, revisit bool) string {
	openers := r.lex.CasualOpeners
	st := stageFillers
	if revisit {
		st = stageRevisitFillers
	}
	ss := util.SplitSentences(text)
	for i := range ss {
		hit, choice := r.pick(st, slot(i), p, len(openers))
		if !hit {
			continue
		}
		if revisit && startsWithAny(ss[i].Body, openers) {
			continue
		}
		if !revisit && i == 0 {
			continue
		}
		ss[i].Body = openers[choice] + " " + lowerLead(ss[i].Body)
		r.stats.Fillers++
	}
	if len(ss) == 0 {
		return text
	}
	return util.JoinSentences(ss)
}

// contract applies contraction rules, then negation rules, each match
// gated independently
func (r *run) contract(text string, p, negationP float64) string {
	text = r.applyRules(text, stageContractions, r.lex.ContractionRules, p)
	return r.applyRules(text, stageNegations, r.lex.NegationRules, negationP)
}

func (r *run) applyRules(text string, st stage, rules []lexicon.Rule, p float64) string {
	for _, rule := range rules {
		text = rule.Pattern.ReplaceAllStringFunc(text, func(match string) string {
			if !r.chance(st, match, p) {
				return match
			}
			r.stats.Contractions++
			if rule.CaseSensitive {
				return rule.Replacement
			}
			return matchCase(match, rule.Replacement)
		})
	}
	return text
}

// reshape splits long sentences and merges short ones into their predecessor
func (r *run) reshape(text string) string {
	ss := util.SplitSentences(text)
	if len(ss) == 0 {
		return text
	}

	out := make([]util.Sentence, 0, len(ss)+2)
	for i, s := range ss {
		split := r.chance(stageSplits, slot(i), r.cfg.SentenceSplit)
		merge := r.chance(stageMerges, slot(i), r.cfg.SentenceMerge)
		n := runeLen(s.Body)

		switch {
		case n > splitMinLength && split:
			if first, second, ok := r.breakSentence(s.Body); ok {
				out = append(out,
					util.Sentence{Body: first, Punct: "."},
					util.Sentence{Body: upperFirst(second), Punct: s.Punct})
				r.stats.Splits++
				continue
			}
			out = append(out, s)
		case n < mergeMaxLength && merge && len(out) > 0 && out[len(out)-1].Punct == ".":
			prev := &out[len(out)-1]
			prev.Body = prev.Body + ", " + lowerLead(s.Body)
			prev.Punct = s.Punct
			r.stats.Merges++
		default:
			out = append(out, s)
		}
	}
	return util.JoinSentences(out)
}

// breakSentence finds the latest acceptable break point among comma,
// conjunction and plain-space candidates
func (r *run) breakSentence(body string) (string, string, bool) {
	best := -1
	for _, sep := range clauseBreaks {
		if idx := r.lastBreak(body, sep, int(float64(len(body))*clauseBreakLimit)); idx > best {
			best = idx
		}
	}
	if idx := r.lastBreak(body, " ", int(float64(len(body))*spaceBreakLimit)); idx > best {
		best = idx
	}
	if best < 0 {
		return "", "", false
	}

	first := strings.TrimRight(strings.TrimSpace(body[:best]), ",;:")
	second := strings.TrimSpace(body[best+1:])
	if first == "" || second == "" {
		return "", "", false
	}
	return first, second, true
}

// lastBreak returns the last index of sep starting at or before limit and
// past minBreakOffset whose following word is not capitalized or protected
func (r *run) lastBreak(body, sep string, limit int) int {
	end := limit + len(sep)
	if end > len(body) {
		end = len(body)
	}
	for end > 0 {
		idx := strings.LastIndex(body[:end], sep)
		if idx <= minBreakOffset {
			return -1
		}
		next := strings.TrimSpace(body[idx+1:])
		if !startsCapitalized(next) && !r.ph.IsPlaceholderStart(next) {
			return idx
		}
		end = idx + len(sep) - 1
	}
	return -1
}

// frame prepends a first-person phrase to the opening sentence, and at
// high intensity to one sentence in the middle
func (r *run) frame(text string) string {
	phrases := r.lex.PersonalityPhrases
	ss := util.SplitSentences(text)

	hit, choice := r.pick(stageFraming, slot(0), r.cfg.Personality, len(phrases))
	if hit && len(ss) > 0 && r.frameable(ss[0].Body) {
		ss[0].Body = phrases[choice] + ", " + lowerLead(ss[0].Body)
		r.stats.Framings++
	}

	if r.cfg.MidTextFraming {
		hit, choice := r.pick(stageMidFraming, slot(len(ss)/2), r.cfg.Personality*midFramingFactor, len(phrases))
		if mid := len(ss) / 2; hit && len(ss) >= midFramingMinSize && r.frameable(ss[mid].Body) {
			ss[mid].Body = phrases[choice] + ", " + lowerLead(ss[mid].Body)
			r.stats.Framings++
		}
	}

	if len(ss) == 0 {
		return text
	}
	return util.JoinSentences(ss)
}

func (r *run) frameable(body string) bool {
	return runeLen(body) > framingMinLength && !firstPerson.MatchString(body) &&
		!startsWithAny(body, r.lex.PersonalityPhrases)
}

// activateVoice turns "was analyzed" style passives into first-person actives
func (r *run) activateVoice(text string) string {
	re := r.lex.PassivePattern
	if re == nil {
		return text
	}
	return re.ReplaceAllStringFunc(text, func(match string) string {
		if !r.chance(stagePassive, match, r.cfg.PassiveVoice) {
			return match
		}
		sub := re.FindStringSubmatch(match)
		active, ok := r.lex.PassiveVerbs[strings.ToLower(sub[1])]
		if !ok {
			return match
		}
		r.stats.PassiveRewrites++
		return active
	})
}

// swapSynonyms replaces intensity words through a longest-first alternation
func (r *run) swapSynonyms(text string, st stage, re *regexp.Regexp, table map[string][]string, p float64) string {
	if re == nil {
		return text
	}
	return re.ReplaceAllStringFunc(text, func(match string) string {
		alts := table[strings.ToLower(match)]
		hit, choice := r.pick(st, match, p, len(alts))
		if !hit {
			return match
		}
		r.stats.Synonyms++
		return matchCase(match, alts[choice])
	})
}

// finish normalizes spacing, capitalizes the opening letter and restores
// every protected term
func (r *run) finish(text, original string) string {
	text = util.NormalizeSpace(text)
	text = strings.ReplaceAll(text, " ,", ",")
	text = strings.ReplaceAll(text, ",,", ",")
	text = upperFirst(text)
	text = r.ph.Restore(text)
	if strings.TrimSpace(text) == "" {
		return original
	}
	return text
}

func startsWithAny(body string, prefixes []string) bool {
	lower := strings.ToLower(body)
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
