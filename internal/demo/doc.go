// Package demo contains the dashboard used by the CLI and the playground.
//
// The dashboard is driven by five boolean signals (maintenance, loggedIn,
// admin, guest and banner) that can be set by name:
//
//	d := demo.New()
//	_ = d.Apply("loggedIn=true")
//	_ = d.Apply("admin=toggle")
package demo
