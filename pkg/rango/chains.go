package rango

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnsupportedChain = errors.New("blockchain not supported")

var blockchainCodes = map[string]string{
	"1":     "ETH",
	"10":    "OPTIMISM",
	"56":    "BSC",
	"137":   "POLYGON",
	"250":   "FANTOM",
	"43114": "AVAX_CCHAIN",
}

// BlockchainCode returns the Rango blockchain code for an EVM chain id.
func BlockchainCode(chainID string) (string, error) {
	code, ok := blockchainCodes[strings.TrimSpace(chainID)]
	if !ok {
		return "", fmt.Errorf("%w: chain %q", ErrUnsupportedChain, chainID)
	}
	return code, nil
}

// String renders the asset the way the basic API expects it:
// BLOCKCHAIN.SYMBOL or BLOCKCHAIN.SYMBOL--ADDRESS.
func (a Asset) String() string {
	s := a.Blockchain + "." + a.Symbol
	if a.Address != nil && *a.Address != "" {
		s += "--" + *a.Address
	}
	return s
}

// ParseChainAsset parses CHAINID.SYMBOL or CHAINID.SYMBOL--ADDRESS, resolving
// the EVM chain id to its Rango blockchain code.
func ParseChainAsset(raw string) (Asset, error) {
	chainID, rest, ok := strings.Cut(strings.TrimSpace(raw), ".")
	if !ok || rest == "" {
		return Asset{}, fmt.Errorf("asset %q: expected CHAINID.SYMBOL[--ADDRESS]", raw)
	}
	code, err := BlockchainCode(chainID)
	if err != nil {
		return Asset{}, err
	}

	asset := Asset{Blockchain: code, Symbol: rest}
	if symbol, address, found := strings.Cut(rest, "--"); found {
		asset.Symbol = symbol
		if address != "" {
			asset.Address = &address
		}
	}
	if asset.Symbol == "" {
		return Asset{}, fmt.Errorf("asset %q: symbol is empty", raw)
	}
	return asset, nil
}
