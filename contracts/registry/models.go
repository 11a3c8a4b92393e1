// Package registry defines the wire schema shared between brickgate and the
// chain-node mock. Field names mirror the on-chain contract surface so both
// sides decode the same JSON.
package registry

// ContractVersion identifies the schema for chain-node responses shared across
// services.
const ContractVersion = "v0.1.0"

// KYCRequest is the stored request record returned by the KYC request
// registry for one wallet.
type KYCRequest struct {
	Commitment string `json:"commitment"`
	Exists     bool   `json:"exists"`
	Approved   bool   `json:"approved"`
	Rejected   bool   `json:"rejected"`
}

// SaleState is the per-property sale contract view.
type SaleState struct {
	PriceUnitsPerToken string `json:"price_units_per_token"` // decimal string; wei-scale values overflow JSON numbers
	SaleActive         bool   `json:"sale_active"`
}

// TokenState is the house-token view used by the market catalog.
type TokenState struct {
	Name         string `json:"name"`
	Symbol       string `json:"symbol"`
	TotalSupply  string `json:"total_supply"`
	MaxSupply    string `json:"max_supply"`
	SaleContract string `json:"sale_contract"`
}

// TxReceipt acknowledges an accepted write.
type TxReceipt struct {
	TxHash string `json:"tx_hash"`
}
