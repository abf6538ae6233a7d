// Package taiga provides a client for the Taiga project-management REST API.
//
// The client covers projects, user stories, issues, tasks, epics, milestones
// (sprints), wiki pages, comments, and attachments. Three mechanisms do the
// heavy lifting; everything else is a direct passthrough to an endpoint:
//
//   - Listing operations traverse paginated endpoints through the engine in
//     the http package, auto-detecting whether a response is a bare array or
//     a results envelope with a continuation indicator.
//
//   - Mutations on versioned resources (issues, user stories, tasks, epics,
//     wiki pages) follow the read-merge-write protocol in versioned.go: the
//     current version is read fresh for every write and the service rejects
//     stale versions, surfaced as http.ErrVersionConflict.
//
//   - Attachments are uploaded from base64 payloads or file paths through
//     the multipart pipeline in attachments.go, with content-type inference
//     and ordered path resolution for bare filenames.
//
// # Usage
//
//	cfg := &taiga.Config{
//		URL: "https://api.taiga.io",
//		Auth: taiga.AuthConfig{
//			Token: os.Getenv("TAIGA_TOKEN"),
//		},
//	}
//
//	client, err := taiga.NewClient(cfg)
//	if err != nil {
//		return err
//	}
//
//	stories, err := client.ListUserStories(ctx, taiga.UserStoryFilters{Project: 42})
//
// # Error Handling
//
// The package uses the http package's error types for consistent handling.
// Use errors.Is to check for specific conditions:
//
//	if errors.Is(err, http.ErrNotFound) {
//		// resource doesn't exist
//	}
//	if errors.Is(err, http.ErrVersionConflict) {
//		// the resource changed between read and write
//	}
package taiga
