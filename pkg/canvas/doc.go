// Package canvas provides a thin client for the Canvas LMS REST and GraphQL APIs.
//
// # Overview
//
// The client issues authenticated requests against a single Canvas instance.
// Collection endpoints are paginated by Canvas through RFC 8288 Link headers;
// [Client.Paginate] follows the rel="next" link until the server stops
// supplying one and returns every page concatenated in order.
//
// Records are returned as decoded JSON ([Record]) rather than typed structs:
// field naming varies between Canvas instances and API versions, so shaping
// records for display is left to the normalize package.
//
// # Configuration Example
//
//	canvas {
//	  host       = "https://school.instructure.com"
//	  token      = "..."        # usually CANVAS_TOKEN instead
//	  timeout    = "30s"
//	  per_page   = 100
//	  tls_verify = true
//	}
//
// # Endpoints Used
//
// Courses:
//   - GET /api/v1/courses
//   - GET /api/v1/courses/:id
//   - GET /api/v1/courses/:id/users
//
// Assignments:
//   - GET    /api/v1/courses/:id/assignments
//   - GET    /api/v1/courses/:id/assignments/:id
//   - POST   /api/v1/courses/:id/assignments
//   - PUT    /api/v1/courses/:id/assignments/:id
//   - DELETE /api/v1/courses/:id/assignments/:id
//   - GET    /api/v1/courses/:id/assignments/:id/submissions[/:user_id]
//   - PUT    /api/v1/courses/:id/assignments/:id/submissions/:user_id
//
// Modules:
//   - GET  /api/v1/courses/:id/modules[/:id[/items]]
//   - POST /api/v1/courses/:id/modules
//
// Files:
//   - GET /api/v1/courses/:id/files
//   - GET /api/v1/courses/:id/folders
//   - GET /api/v1/files/:id
//
// Users:
//   - GET /api/v1/users/self
//   - GET /api/v1/users/:id
//   - GET /api/v1/users/:id/courses
//   - GET /api/v1/users/:id/enrollments
//
// GraphQL:
//   - POST /api/graphql
//
// # Error Handling
//
// Every request returns one of three error kinds, testable with errors.Is:
//   - [ErrNetwork]: the request never produced an HTTP response
//   - [ErrAPI]: Canvas answered with a non-2xx status ([*APIError] carries the
//     status code and the body unmodified)
//   - [ErrGraphQL]: a GraphQL response carried a non-empty errors list
//
// There is no retry policy. Failed requests are reported to the caller as-is.
//
// # Security
//
//   - Bearer token authentication through a static oauth2.TokenSource
//   - Token is never logged or serialized to JSON
package canvas
