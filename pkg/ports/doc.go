/*
Package ports defines the driven ports (interfaces) for the Gatehouse
gateway.

These interfaces decouple the invocation engine and the built-in tools from
external implementations, allowing the gateway to work with various
authentication schemes and upstream service clients.

# Key Interfaces

  - Authenticator: turns a bearer token into a session Identity.
  - ProfileAPI: fetches the authenticated caller's profile with a delegated
    credential.
  - ImageGenerator: renders an image from a prompt.
  - PriceSource: quotes the current price of a trading symbol.
*/
package ports
