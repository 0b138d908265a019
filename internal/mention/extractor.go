// Package mention implements the two pure text-scanning rules: issue-key
// extraction and user-mention resolution.
package mention

import "regexp"

// issueKeyPattern matches issue-tracker keys like "PRD-16975" or "FOO-1".
var issueKeyPattern = regexp.MustCompile(`\b[A-Z]{2,}-\d+\b`)

// userMentionPattern matches Slack-style raw user mentions like "<@U123ABC>".
var userMentionPattern = regexp.MustCompile(`<@(U[A-Z0-9]+)>`)

// ExtractIssueKeys returns the deduped set of issue keys found in text, in
// first-occurrence order.
func ExtractIssueKeys(text string) []string {
	matches := issueKeyPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	keys := make([]string, 0, len(matches))
	for _, m := range matches {
		if seen[m] {
			continue
		}
		seen[m] = true
		keys = append(keys, m)
	}
	return keys
}

// ResolveMentions replaces every "<@Uxxxx>" occurrence in text with
// "@displayName" when the user id is present in userMap; unknown ids are
// left as the literal, unchanged text.
func ResolveMentions(text string, userMap map[string]string) string {
	return userMentionPattern.ReplaceAllStringFunc(text, func(match string) string {
		sub := userMentionPattern.FindStringSubmatch(match)
		if len(sub) != 2 {
			return match
		}
		userID := sub[1]
		name, ok := userMap[userID]
		if !ok {
			return match
		}
		return "@" + name
	})
}
