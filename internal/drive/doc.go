// Package drive provides a client for the Google Drive API.
//
// It covers uploads, folder creation, listing and search, downloads with
// export of Google-native formats, copy/move/delete, sharing permissions
// and comment threads. An offline backend fabricates equivalent data for
// accounts without a Google connection.
package drive
