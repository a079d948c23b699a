package deso

import "github.com/pkg/errors"

func init() {
	MainNetParams.Name = NetworkMainNet
	MainNetParams.PublicKeyPrefix = [3]byte{0xcd, 0x14, 0x00}
	MainNetParams.NodeURI = "https://node.deso.org"
	MainNetParams.IdentityURI = "https://identity.deso.org"

	TestNetParams.Name = NetworkTestNet
	TestNetParams.PublicKeyPrefix = [3]byte{0x11, 0xc2, 0x00}
	TestNetParams.NodeURI = "https://test.deso.org"
	TestNetParams.IdentityURI = "https://identity.deso.org"
}

type NetworkParams struct {
	Name            Network
	PublicKeyPrefix [3]byte
	NodeURI         string
	IdentityURI     string
}

var MainNetParams = NetworkParams{}
var TestNetParams = NetworkParams{}

const (
	NetworkMainNet Network = "mainnet"
	NetworkTestNet Network = "testnet"
)

type Network string

func (n Network) Valid() bool {
	return n == NetworkMainNet || n == NetworkTestNet
}

func (n Network) Validate() (err error) {
	if !n.Valid() {
		err = errors.Errorf("invalid network: '%s'", n)
	}
	return
}

func (n Network) Params() (params *NetworkParams, err error) {
	if err = n.Validate(); err != nil {
		return
	}

	switch n {
	case NetworkMainNet:
		return &MainNetParams, nil
	case NetworkTestNet:
		return &TestNetParams, nil
	}

	return
}

// networkForPrefix reports which network a base58check version prefix
// belongs to.
func networkForPrefix(prefix []byte) (n Network, ok bool) {
	for _, params := range []*NetworkParams{&MainNetParams, &TestNetParams} {
		if string(params.PublicKeyPrefix[:]) == string(prefix) {
			return params.Name, true
		}
	}
	return
}
