// Package todo defines the domain types exchanged with the todo API.
//
// The wire format is JSON with camelCase keys:
//
//	{
//	  "_id": "66f2a9c1d4e5f60718293a4b",
//	  "title": "Buy milk",
//	  "description": "2% if they have it",
//	  "status": "pending",
//	  "priority": "high",
//	  "dueDate": "2026-09-01T00:00:00Z",
//	  "createdAt": "2026-08-20T09:12:44Z",
//	  "updatedAt": "2026-08-20T09:12:44Z"
//	}
//
// The server is the single source of truth for every field. In particular
// completedAt is derived server-side from status and is never computed
// locally.
//
// # Status Values
//
//   - "pending": not yet completed
//   - "done": completed (completedAt is set)
//
// # Priority Values
//
//   - "low", "medium", "high"
//
// Filters describes the query parameters of the collection endpoint. Its
// canonical encoding (Filters.Key) doubles as the cache identity for a
// fetched collection: two filter sets that encode identically are the same
// query.
package todo
