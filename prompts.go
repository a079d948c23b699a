package deso

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultAccessLevel asks for full signing rights.
const DefaultAccessLevel = 4

type DeriveParams struct {
	PublicKey                        string
	DerivedPublicKey                 string
	TransactionSpendingLimitResponse string
	DeleteKey                        bool
	ExpirationDays                   uint64
	Callback                         string
}

type prompts struct {
	uri     string
	testnet bool
}

func newPrompts(identityURI string, network Network) prompts {
	return prompts{
		uri:     strings.TrimSuffix(identityURI, "/"),
		testnet: network == NetworkTestNet,
	}
}

func (p prompts) approve(txHex, id string) string {
	return p.build("approve", []string{"tx", txHex, "id", id})
}

func (p prompts) login(accessLevel int, id string) string {
	return p.build("log-in", []string{
		"accessLevelRequest", strconv.Itoa(accessLevel),
		"hideJumio", "true",
		"id", id,
	})
}

func (p prompts) logout(publicKey, id string) string {
	return p.build("logout", []string{"publicKey", publicKey, "id", id})
}

func (p prompts) derive(params DeriveParams, id string) string {
	pairs := []string{}
	add := func(key, value string) {
		if value != "" {
			pairs = append(pairs, key, value)
		}
	}
	add("callback", params.Callback)
	add("publicKey", params.PublicKey)
	add("transactionSpendingLimitResponse", params.TransactionSpendingLimitResponse)
	add("derivedPublicKey", params.DerivedPublicKey)
	if params.DeleteKey {
		add("deleteKey", "true")
	}
	if params.ExpirationDays > 0 {
		add("expirationDays", strconv.FormatUint(params.ExpirationDays, 10))
	}
	add("id", id)
	return p.build("derive", pairs)
}

// build keeps query parameters in the order given.
func (p prompts) build(path string, pairs []string) string {
	var query strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if query.Len() > 0 {
			query.WriteByte('&')
		}
		query.WriteString(pairs[i])
		query.WriteByte('=')
		query.WriteString(url.QueryEscape(pairs[i+1]))
	}
	if p.testnet {
		if query.Len() > 0 {
			query.WriteByte('&')
		}
		query.WriteString("testnet=true")
	}

	out := p.uri + "/" + path
	if query.Len() > 0 {
		out += "?" + query.String()
	}
	return out
}
