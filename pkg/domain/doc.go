/*
Package domain contains the core domain models for the Gatehouse gateway.

It defines the entities the rest of the system is built from: the
authenticated Identity of a session, the Descriptor of a callable tool, the
content blocks a tool produces, and the Fault taxonomy every failure is
normalized into. This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Identity: the authenticated caller, one immutable value per session.
  - Descriptor: a named tool with a typed parameter schema, an optional
    visibility guard, and a handler function.
  - Result / Content: the ordered text and binary blocks a tool returns.
  - Fault: a classified failure (NotFound, Unauthorized, InvalidParameters,
    UpstreamError, InternalError).
*/
package domain
