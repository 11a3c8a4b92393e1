package domain

// Commitment is the keccak-256 hash of a canonicalized submission, stored
// on-chain so the profile itself never leaves local storage.
type Commitment string

// ZeroCommitment is the registry's unset value.
const ZeroCommitment Commitment = "0x0000000000000000000000000000000000000000000000000000000000000000"

// IsZero reports whether the commitment is empty or the contract zero value.
func (c Commitment) IsZero() bool {
	return c == "" || c == ZeroCommitment
}

// RegistrySnapshot is the read-only per-wallet view joined from the KYC
// request registry and the identity registry. The two contracts are read
// independently, so transiently inconsistent flag combinations must resolve
// deterministically (rejection wins).
type RegistrySnapshot struct {
	Commitment    Commitment
	RequestExists bool
	Approved      bool
	Rejected      bool
	Verified      bool
}
