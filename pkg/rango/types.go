package rango

// Asset identifies a token on a Rango supported blockchain.
type Asset struct {
	Blockchain string  `json:"blockchain"`
	Symbol     string  `json:"symbol"`
	Address    *string `json:"address"`
}

// Token is a token as described in meta and route payloads.
type Token struct {
	Blockchain string   `json:"blockchain"`
	Symbol     string   `json:"symbol"`
	Name       *string  `json:"name"`
	Address    *string  `json:"address"`
	Decimals   int      `json:"decimals"`
	Image      string   `json:"image"`
	USDPrice   *float64 `json:"usdPrice"`
}

type Blockchain struct {
	Name            string   `json:"name"`
	DefaultDecimals int      `json:"defaultDecimals"`
	AddressPatterns []string `json:"addressPatterns"`
	FeeAssets       []Asset  `json:"feeAssets"`
	Logo            string   `json:"logo"`
	DisplayName     string   `json:"displayName"`
	ChainID         *string  `json:"chainId"`
	Enabled         bool     `json:"enabled"`
}

type Swapper struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Logo  string `json:"logo"`
}

type MetaResponse struct {
	Blockchains []Blockchain `json:"blockchains"`
	Tokens      []Token      `json:"tokens"`
	Swappers    []Swapper    `json:"swappers"`
}

// SwapFee is a single fee line of a quoted route.
type SwapFee struct {
	Name        string `json:"name"`
	Token       Token  `json:"token"`
	ExpenseType string `json:"expenseType"`
	Amount      string `json:"amount"`
}

// QuotePath is one hop of a quoted route.
type QuotePath struct {
	From                   Token   `json:"from"`
	To                     Token   `json:"to"`
	Swapper                Swapper `json:"swapper"`
	SwapperType            string  `json:"swapperType"`
	ExpectedOutput         string  `json:"expectedOutput"`
	EstimatedTimeInSeconds int     `json:"estimatedTimeInSeconds"`
}

type Route struct {
	OutputAmount           string      `json:"outputAmount"`
	Swapper                Swapper     `json:"swapper"`
	From                   Token       `json:"from"`
	To                     Token       `json:"to"`
	Fee                    []SwapFee   `json:"fee"`
	EstimatedTimeInSeconds int         `json:"estimatedTimeInSeconds"`
	Path                   []QuotePath `json:"path"`
}

const (
	ResultOK              = "OK"
	ResultHighImpact      = "HIGH_IMPACT"
	ResultNoRoute         = "NO_ROUTE"
	ResultInputLimitIssue = "INPUT_LIMIT_ISSUE"
)

type QuoteRequest struct {
	From   Asset
	To     Asset
	Amount string
}

type QuoteResponse struct {
	RequestID  string  `json:"requestId"`
	ResultType string  `json:"resultType"`
	Route      *Route  `json:"route"`
	Error      *string `json:"error"`
}

type SwapRequest struct {
	From        Asset
	To          Asset
	Amount      string
	FromAddress string
	ToAddress   string
	Slippage    string
}

// EvmTransaction carries the calldata needed to execute a swap on an EVM chain.
type EvmTransaction struct {
	Type        string  `json:"type"`
	BlockChain  string  `json:"blockChain"`
	From        *string `json:"from"`
	ApproveTo   *string `json:"approveTo"`
	ApproveData *string `json:"approveData"`
	TxTo        string  `json:"txTo"`
	TxData      *string `json:"txData"`
	Value       *string `json:"value"`
	GasLimit    *string `json:"gasLimit"`
	GasPrice    *string `json:"gasPrice"`
}

// NeedsApproval reports whether an approval transaction must precede the swap.
func (tx EvmTransaction) NeedsApproval() bool {
	return tx.ApproveTo != nil && *tx.ApproveTo != "" && tx.ApproveData != nil && *tx.ApproveData != ""
}

type SwapResponse struct {
	RequestID  string          `json:"requestId"`
	ResultType string          `json:"resultType"`
	Route      *Route          `json:"route"`
	Error      *string         `json:"error"`
	Tx         *EvmTransaction `json:"tx"`
}

type StatusRequest struct {
	RequestID string
	TxID      string
}

// Status is the normalized progress of a swap.
type Status string

const (
	StatusPending Status = "pending"
	StatusFailed  Status = "failed"
	StatusSuccess Status = "success"
)

// Terminal reports whether no further status change is expected.
func (s Status) Terminal() bool {
	return s == StatusFailed || s == StatusSuccess
}

type statusOutput struct {
	Amount        string `json:"amount"`
	ReceivedToken *Token `json:"receivedToken"`
	Type          string `json:"type"`
}

type bridgeData struct {
	DestTxHash *string `json:"destTxHash"`
}

type statusPayload struct {
	Status     *string       `json:"status"`
	Error      *string       `json:"error"`
	Output     *statusOutput `json:"output"`
	BridgeData *bridgeData   `json:"bridgeData"`
}

type StatusResponse struct {
	Status        Status
	Error         string
	DestTxHash    string
	AmountOut     string
	ReceivedToken *Token
}
