// Package google manages OAuth2 credentials for the Google Workspace APIs.
// Tokens are cached per account under the user cache directory; the OAuth
// connection lifecycle itself (consent, refresh) is handled by the oauth2
// library and the Google endpoints.
package google
