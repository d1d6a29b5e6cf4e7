// Package search_caps declares the GOOGLESEARCH_* capability catalog: web,
// news, image and workspace search plus trend and analytics lookups.
// Results are synthesized; there is no public Google Search API to back
// them.
package search_caps
