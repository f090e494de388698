package usecase

import (
	"strings"
	"testing"
	"testing/quick"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"gm-poster/internal/domain"
)

func TestStripWrappingQuotes(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "wrapped", in: `"hello"`, want: "hello"},
		{name: "nested keeps inner pair", in: `""hello""`, want: `"hello"`},
		{name: "only leading", in: `"hello`, want: `"hello`},
		{name: "only trailing", in: `hello"`, want: `hello"`},
		{name: "inner quotes", in: `say "gm" today`, want: `say "gm" today`},
		{name: "pair only", in: `""`, want: ""},
		{name: "single quote char", in: `"`, want: `"`},
		{name: "empty", in: "", want: ""},
		{name: "single quotes untouched", in: `'hello'`, want: `'hello'`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, stripWrappingQuotes(tc.in))
		})
	}
}

func TestStripWrappingQuotes_RemovesExactlyOnePair(t *testing.T) {
	prop := func(inner string) bool {
		return stripWrappingQuotes(`"`+inner+`"`) == inner
	}
	require.NoError(t, quick.Check(prop, nil))
}

func TestStripWrappingQuotes_IdentityWhenNotWrapped(t *testing.T) {
	prop := func(s string) bool {
		if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
			return true
		}
		return stripWrappingQuotes(s) == s
	}
	require.NoError(t, quick.Check(prop, nil))

	// Biased inputs so the property also sees one-sided quotes.
	oneSided := func(s string) bool {
		lead, trail := `"`+s+"x", "x"+s+`"`
		return stripWrappingQuotes(lead) == lead && stripWrappingQuotes(trail) == trail
	}
	require.NoError(t, quick.Check(oneSided, nil))
}

func TestNewDraft(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "quoted", raw: `"Rise and grind, builders!"`, want: "GM-GPT-X: Rise and grind, builders!"},
		{name: "surrounding whitespace", raw: "  \n\"GM frens\"\t ", want: "GM-GPT-X: GM frens"},
		{name: "unquoted", raw: "GM frens", want: "GM-GPT-X: GM frens"},
		{name: "whitespace inside quotes kept", raw: `" GM "`, want: "GM-GPT-X:  GM "},
		{name: "empty", raw: "   ", want: "GM-GPT-X: "},
		{name: "next line trimmed", raw: "\u0085GM\u0085", want: "GM-GPT-X: GM"},
		{name: "byte order mark kept", raw: "\ufeffGM", want: "GM-GPT-X: \ufeffGM"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := newDraft(tc.raw)
			require.Equal(t, tc.raw, d.Raw)
			require.Equal(t, tc.want, d.Text)
		})
	}
}

func TestValidateDraft(t *testing.T) {
	bodyLimit := maxPostLength - len(postPrefix)

	require.NoError(t, validateDraft(newDraft(strings.Repeat("a", bodyLimit))))
	require.NoError(t, validateDraft(newDraft(strings.Repeat("é", bodyLimit))), "length counts code units, not bytes")

	err := validateDraft(newDraft(strings.Repeat("a", bodyLimit+1)))
	var invalid *draftValidationError
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, "post_too_long", invalid.reason)

	err = validateDraft(domain.Draft{})
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, "empty_post", invalid.reason)
}

func TestValidateDraft_AstralCharactersCountTwice(t *testing.T) {
	bodyLimit := maxPostLength - len(postPrefix)
	rockets := strings.Repeat("🚀", 20)

	atLimit := newDraft(strings.Repeat("a", bodyLimit-40) + rockets)
	require.Equal(t, maxPostLength, atLimit.Length())
	require.NoError(t, validateDraft(atLimit))

	var invalid *draftValidationError
	overByOne := newDraft(strings.Repeat("a", bodyLimit-39) + rockets)
	require.Equal(t, maxPostLength+1, overByOne.Length())
	require.ErrorAs(t, validateDraft(overByOne), &invalid)
	require.Equal(t, "post_too_long", invalid.reason)

	// 280 code points, 300 code units.
	wide := newDraft(strings.Repeat("a", 250) + rockets)
	require.Equal(t, maxPostLength, utf8.RuneCountInString(wide.Text))
	require.Equal(t, 300, wide.Length())
	require.ErrorAs(t, validateDraft(wide), &invalid)
	require.Equal(t, "post_too_long", invalid.reason)
}

func TestBuildPromptMessages(t *testing.T) {
	msgs := buildPromptMessages()
	require.Len(t, msgs, 2)
	require.Equal(t, "system", msgs[0].Role)
	require.Contains(t, msgs[0].Content, "'Good Morning' tweet")
	require.Equal(t, "user", msgs[1].Role)
	require.Contains(t, msgs[1].Content, "web3")
}
