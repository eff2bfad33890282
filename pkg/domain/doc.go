// Package domain contains the core domain entities shared across packages.
// The types carry no infrastructure concerns: storage backends convert their
// native documents into them and the HTTP layer serializes them.
package domain
