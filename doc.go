/*
Package gatehouse is a capability-gated tool gateway for the Model Context Protocol (MCP).

It serves a fixed catalog of tools to MCP clients and decides, per session identity, which of them each caller may see and invoke. Tools a caller is not entitled to are indistinguishable from tools that do not exist.

# Concept

Every tool is a plain Go handler behind a uniform descriptor: name, description, parameter schema, optional visibility guard. The invocation engine runs each call through the same gate sequence (does the tool exist, may this identity see it, do the arguments validate) and only then dispatches to the handler under a deadline. Every failure, from an unknown name to a panicking handler, is normalized into one of five fault kinds and delivered to the client as a tool result, never as a transport error. This Hexagonal Architecture keeps the gating logic independent of how sessions arrive: stdio, Server-Sent Events, or streamable HTTP.

# Key Features

  - Identity-gated visibility: guarded tools are filtered out of tools/list and rejected on tools/call for everyone outside their allow list, with the rejection message identical to the unknown-tool message.
  - Strict argument validation: kinds, bounds, enums and required fields are checked and defaults applied before any upstream call is made.
  - Normalized faults: not_found, unauthorized, invalid_parameters, upstream_error, internal_error. Internal causes are logged server-side and withheld from callers.
  - Deployment extras: static-token and JWT authenticators, Redis price caching, Prometheus metrics, YAML configuration with environment expansion.

# Usage

Assemble a Gateway from a configuration and invoke tools directly, or hand it to the MCP adapter to serve sessions.

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/gatehouse"
		"github.com/aretw0/gatehouse/pkg/domain"
	)

	func main() {
		gw, err := gatehouse.New(gatehouse.DefaultConfig())
		if err != nil {
			log.Fatal(err)
		}
		defer gw.Close()

		ctx := context.Background()
		res, err := gw.Invoke(ctx, domain.Anonymous, "add", map[string]any{"a": 2, "b": 40})
		if err != nil {
			log.Fatal(err)
		}
		for _, block := range res.Content {
			if text, ok := block.(domain.TextContent); ok {
				fmt.Println(text.Text)
			}
		}
	}

To serve the gateway over MCP, wrap it with pkg/adapters/mcp and run the transport of your choice; the cmd/gatehouse command does exactly that.
*/
package gatehouse
