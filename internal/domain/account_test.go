package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAccounts(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []Account
	}{
		{
			name: "multiple pairs",
			raw:  "alice@mail.com:pw1,bob@mail.com:pw2",
			want: []Account{
				{Identifier: "alice@mail.com", Secret: "pw1"},
				{Identifier: "bob@mail.com", Secret: "pw2"},
			},
		},
		{
			name: "whitespace around pairs and fields",
			raw:  " alice:pw1 , bob : pw2 ",
			want: []Account{
				{Identifier: "alice", Secret: "pw1"},
				{Identifier: "bob", Secret: "pw2"},
			},
		},
		{
			name: "secret may itself contain a colon",
			raw:  "alice:pw:with:colons",
			want: []Account{{Identifier: "alice", Secret: "pw:with:colons"}},
		},
		{
			name: "malformed pairs are skipped",
			raw:  "alice:pw1,no-separator,:missing-user,missing-secret:,bob:pw2",
			want: []Account{
				{Identifier: "alice", Secret: "pw1"},
				{Identifier: "bob", Secret: "pw2"},
			},
		},
		{name: "empty input", raw: "", want: nil},
		{name: "only separators", raw: ",,,", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAccounts(tt.raw))
		})
	}
}

func TestMaskIdentifier(t *testing.T) {
	tests := []struct {
		identifier string
		want       string
	}{
		{identifier: "abcdef", want: "ab***"},
		{identifier: "ab", want: "ab"},
		{identifier: "a", want: "a"},
		{identifier: "", want: ""},
		{identifier: "abc", want: "ab***"},
		{identifier: "用户名测试", want: "用户***"},
	}

	for _, tt := range tests {
		t.Run(tt.identifier, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskIdentifier(tt.identifier))
		})
	}
}
