// Package providers implements the Completer interface for each supported
// LLM provider.
//
// Supported providers: Ollama (native API) and LM Studio (OpenAI-compatible)
// for local models, plus Anthropic (Claude) and Google (Gemini) hosted APIs.
//
// All providers share a common retry helper with exponential back-off. Rate
// limits, 5xx responses, and connection failures are retried; auth errors and
// malformed responses are not. HTTP clients are injected via a transport
// field so that tests can redirect calls to local httptest servers without
// making live API requests; the Gemini provider takes a client factory for
// the same reason.
//
// Use [New] to obtain a Completer by provider name and model string.
package providers
