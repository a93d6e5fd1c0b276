// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package backend

import (
	"net/http"

	"github.com/relabs-tech/jobly/core/access"
)

var (
	// Version is the version of the curent build
	Version = "unset"
)

func (b *Backend) handleVersion() {
	b.handle("/version", http.MethodGet, func(w http.ResponseWriter, r *http.Request) {
		if err := access.AuthorizationFromContext(r.Context()).RequireAdmin(); err != nil {
			b.fail(w, r, 4230, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"version": Version})
	})
}
