// Package docuware is a session-authenticated client for the DocuWare
// Platform REST API.
//
// A Client logs in with a user name and password, keeps the session cookie
// returned by Account/Logon in a cache.Cache shared by every client that uses
// the same cache, and attaches it to each request. A 401 from any endpoint
// drops the cached cookie; the next call logs in again.
//
//	cfg := docuware.Config{
//		URLRoot:  "https://example.docuware.cloud/DocuWare/Platform",
//		User:     "api",
//		Password: os.Getenv("DOCUWARE_PASSWORD"),
//	}
//
//	dw, err := docuware.New(ctx, cfg,
//		docuware.WithLogger(log),
//		docuware.WithCache(redis.NewCache(rdb)),
//	)
//	if err != nil {
//		return err
//	}
//
//	list, err := dw.DocumentsListWithFilter(ctx, cabinetID, "[STATUS]=Pending")
//	if errors.Is(err, docuware.ErrUnauthorized) {
//		// the cookie was purged; retry the call to log in again
//	}
//
//	name, err := dw.DownloadDocument(ctx, cabinetID, 123)
//
//	ok, err := dw.UpdateIndexValues(ctx, cabinetID, 123, []docuware.Field{
//		docuware.NewField("STATUS", "Approved", "String"),
//	})
//
// Failed calls are never retried automatically.
package docuware
