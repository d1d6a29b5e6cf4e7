// Package drive_caps declares the GOOGLEDRIVE_* capability catalog: file
// uploads and downloads, folders, search, copy/move/delete, sharing and
// comment threads.
package drive_caps
