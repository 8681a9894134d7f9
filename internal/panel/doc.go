// Package panel implements the state core shared by every resource screen.
//
// Each category screen (devices, automation rules) instantiates a
// List[T]: an ordered view of the resources the server last returned,
// at most one editable draft, the last outcome message, and the busy
// flag that blocks overlapping submissions. Action-only screens (door,
// camera, TV, weather) use the same Begin/Finish discipline without a
// list.
//
// # Lifecycle
//
// A panel moves through four states:
//
//	Idle -> Loading -> Ready   (operation succeeded)
//	              \-> Error    (operation failed; prior state retained)
//
// The owning screen drives transitions explicitly:
//
//	if !p.Begin() {
//	    return // another operation is in flight
//	}
//	devices, err := client.ListDevices(ctx)
//	if err != nil {
//	    p.FinishFailure(api.FailureMessage(err))
//	    return
//	}
//	p.FinishFetch(devices, "Devices fetched successfully")
//
// # Reconciliation Rules
//
// The local list only changes when the server confirms: a fetch replaces
// it wholesale, a create appends the server's copy, an update replaces
// the matching entry by identifier, a delete removes exactly the entry
// whose identifier matches. A failure changes nothing but the message.
//
// Package panel performs no I/O and knows nothing about rendering, which
// keeps the reconciliation rules testable without a terminal or a server.
package panel
