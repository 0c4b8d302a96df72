package dropbox

import "platodropbox/internal/core/domain/models"

type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	TokenType        string `json:"token_type"`
	ExpiresIn        int64  `json:"expires_in"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

type listFolderRequest struct {
	Path                        string `json:"path"`
	IncludeNonDownloadableFiles bool   `json:"include_non_downloadable_files"`
	Limit                       int    `json:"limit"`
}

// Entries is a pointer so a response without the key can be told apart from an
// empty folder.
type listFolderResponse struct {
	Entries *[]models.RemoteEntry `json:"entries"`
	Cursor  string                `json:"cursor"`
	HasMore bool                  `json:"has_more"`
}

type downloadArg struct {
	Path string `json:"path"`
}
