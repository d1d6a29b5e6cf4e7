// Package forms_caps declares the GOOGLEFORMS_* capability catalog: form
// creation, question management and response retrieval. Results are
// synthesized until a Forms backend is wired up.
package forms_caps
