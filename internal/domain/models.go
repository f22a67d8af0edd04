package domain

// Domain contains core models shared by the tracker, watchlist and publishers.

// Swap is a submitted cross-chain swap whose outcome is being tracked.
type Swap struct {
	ID        string `json:"id" yaml:"id"`
	RequestID string `json:"request_id" yaml:"request_id"`
	TxHash    string `json:"tx_hash" yaml:"tx_hash"`
	FromChain string `json:"from_chain" yaml:"from_chain"`
	ToChain   string `json:"to_chain" yaml:"to_chain"`
}

// SwapOutcome is the observed status of a swap at a point in time.
type SwapOutcome struct {
	Status        string `json:"status"`
	Error         string `json:"error,omitempty"`
	DestTxHash    string `json:"dest_tx_hash,omitempty"`
	AmountOut     string `json:"amount_out,omitempty"`
	ReceivedToken string `json:"received_token,omitempty"`
}
