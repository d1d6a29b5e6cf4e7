// Package chat_caps declares the GOOGLECHAT_* capability catalog: spaces,
// messages and membership. Results are synthesized until a Chat backend is
// wired up.
package chat_caps
