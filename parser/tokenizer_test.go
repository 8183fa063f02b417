package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectTokens(t *testing.T, input string) []*Token {
	t.Helper()
	tokenizer := NewHTMLTokenizerString(input)
	var tokens []*Token
	for tokenizer.Next() {
		tok := *tokenizer.Token()
		tokens = append(tokens, &tok)
	}
	require.NoError(t, tokenizer.Err())
	return tokens
}

func TestTokenizerBasicDocument(t *testing.T) {
	tokens := collectTokens(t, `<!DOCTYPE html><html><body class="a b">text<!-- c --></body></html>`)

	require.Len(t, tokens, 8)

	assert.Equal(t, docTypeToken, tokens[0].TokenType)
	assert.Equal(t, "html", tokens[0].TagName)
	assert.False(t, tokens[0].ForceQuirks)

	assert.Equal(t, startTagToken, tokens[1].TokenType)
	assert.Equal(t, "html", tokens[1].TagName)

	assert.Equal(t, startTagToken, tokens[2].TokenType)
	assert.Equal(t, "body", tokens[2].TagName)
	assert.Equal(t, "a b", tokens[2].Attributes["class"])

	assert.Equal(t, characterToken, tokens[3].TokenType)
	assert.Equal(t, "text", tokens[3].Data)

	assert.Equal(t, commentToken, tokens[4].TokenType)
	assert.Equal(t, " c ", tokens[4].Data)

	assert.Equal(t, endTagToken, tokens[5].TokenType)
	assert.Equal(t, "body", tokens[5].TagName)
	assert.Equal(t, endTagToken, tokens[6].TokenType)
	assert.Equal(t, endOfFileToken, tokens[7].TokenType)
}

func TestTokenizerSelfClosingTag(t *testing.T) {
	tokens := collectTokens(t, `<div><br/></div>`)

	require.Len(t, tokens, 4)
	assert.Equal(t, "br", tokens[1].TagName)
	assert.True(t, tokens[1].SelfClosing)
}

func TestTokenizerEmitsEOFExactlyOnce(t *testing.T) {
	tokenizer := NewHTMLTokenizerString("x")

	require.True(t, tokenizer.Next())
	assert.Equal(t, characterToken, tokenizer.Token().TokenType)
	require.True(t, tokenizer.Next())
	assert.Equal(t, endOfFileToken, tokenizer.Token().TokenType)
	assert.False(t, tokenizer.Next())
	assert.False(t, tokenizer.Next())
}

func TestParseDoctypePublicAndSystem(t *testing.T) {
	tok := parseDoctype(`html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd"`)

	assert.Equal(t, "html", tok.TagName)
	assert.Equal(t, "-//W3C//DTD XHTML 1.0 Transitional//EN", tok.PublicIdentifier)
	assert.Equal(t, "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd", tok.SystemIdentifier)
	assert.False(t, tok.ForceQuirks)
}

func TestParseDoctypeSystemOnly(t *testing.T) {
	tok := parseDoctype(`html SYSTEM "about:legacy-compat"`)

	assert.Equal(t, "html", tok.TagName)
	assert.Empty(t, tok.PublicIdentifier)
	assert.Equal(t, "about:legacy-compat", tok.SystemIdentifier)
	assert.False(t, tok.ForceQuirks)
}

func TestParseDoctypeMalformed(t *testing.T) {
	tok := parseDoctype(`html BOGUS`)

	assert.Equal(t, "html", tok.TagName)
	assert.True(t, tok.ForceQuirks)
}
