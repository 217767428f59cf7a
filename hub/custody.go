package hub

// Custody moves funds in and out of the system on behalf of the engine's
// callers. The engine itself never transfers assets: Configure returns the
// signed balance delta it actually applied, and the orchestration layer is
// expected to settle custody with it: Deposit for a positive applied
// delta before the call, Withdraw for a negative one after. Settle's
// received amount is likewise paid out through Withdraw by the caller.
type Custody interface {
	// Deposit takes amount base units of the asset into custody.
	Deposit(asset uint64, amount uint64) error

	// Withdraw releases amount base units of the asset from custody.
	Withdraw(asset uint64, amount uint64) error
}
