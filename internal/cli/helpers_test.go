package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toyz/routedoc/internal/utils"
)

// writeTree creates files relative to root
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func bufferedDiagnostics() (*utils.DiagnosticSystem, *bytes.Buffer) {
	var buf bytes.Buffer
	return utils.NewBufferedDiagnostics(utils.DiagnosticDebug, &buf), &buf
}

const usersSource = `const express = require('express');
const app = express();

/**
 * Fetch a user
 * @param {integer} id.path.required - User id
 * @returns {User} 200 - The user
 * @tags users
 */
app.get('/users/:id', auth, getUser);

app.route('/teams/:team')
  // List team members
  .get(listMembers)
  .post(addMember);
`

const ordersSource = `router.delete('/orders/:orderId', removeOrder);
`
