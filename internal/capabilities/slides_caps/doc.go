// Package slides_caps declares the GOOGLESLIDES_* capability catalog:
// presentation creation, slide management and text or image insertion.
// Results are synthesized until a Slides backend is wired up.
package slides_caps
