// Package testutil provides utilities for testing kiln components.
//
// Key components:
//   - TestTemplate: declarative builder for template directories on disk
//   - MockPrompter and MockConfirmer: testify mocks for the interactive
//     collaborators of the answer engine and the executor
//   - file helpers that fail the test instead of returning errors
//
// All test data is defined inline; every helper writes below t.TempDir().
package testutil
