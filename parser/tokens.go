package parser

type tokenType uint

const (
	characterToken tokenType = iota
	startTagToken
	endTagToken
	endOfFileToken
	commentToken
	docTypeToken
)

// Token is a discrete unit handed from the tokenizer to the tree
// constructor. The tree constructor never inspects raw bytes.
type Token struct {
	TokenType        tokenType
	TagName          string
	Attributes       map[string]string
	PublicIdentifier string
	SystemIdentifier string
	ForceQuirks      bool
	SelfClosing      bool
	Data             string
}
