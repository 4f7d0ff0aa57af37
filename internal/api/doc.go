// Package api implements the HTTP handlers for the task manager's REST API.
package api
