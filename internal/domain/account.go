package domain

import "strings"

// Account is a single set of forum credentials, valid for one batch run.
type Account struct {
	Identifier string
	Secret     string
}

// ParseAccounts parses a delimited credential list of the form
// "user1:pass1,user2:pass2". Pairs without a separator or with an empty
// identifier or secret are skipped.
func ParseAccounts(raw string) []Account {
	var accounts []Account

	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" || !strings.Contains(pair, ":") {
			continue
		}

		identifier, secret, _ := strings.Cut(pair, ":")
		identifier = strings.TrimSpace(identifier)
		secret = strings.TrimSpace(secret)
		if identifier == "" || secret == "" {
			continue
		}

		accounts = append(accounts, Account{Identifier: identifier, Secret: secret})
	}

	return accounts
}

const maskToken = "***"

// MaskIdentifier redacts an account identifier for display: identifiers
// longer than two characters keep their first two characters followed by
// a mask token, shorter ones pass through unchanged.
func MaskIdentifier(identifier string) string {
	runes := []rune(identifier)
	if len(runes) <= 2 {
		return identifier
	}

	return string(runes[:2]) + maskToken
}
