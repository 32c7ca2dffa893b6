// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package lint evaluates style rules against scanned JavaScript source.
//
// The package holds the shared vocabulary of the checker (Severity,
// Issue, Result), the Rule interface and Registry, the policy layer
// that escalates or silences rules, and the Engine that fans enabled
// rules out over one scanned model per file.
//
// # Architecture
//
// The evaluation pipeline is a single synchronous pass per file:
//
//	Source → Scanner → Model → Rules (fan-out) → Policy → Result
//
// Each file's analysis is independent and stateless; concurrency
// happens only across files, never within one.
//
// # Severity Mapping
//
// Raw issues carry the severity the rule assigned. Policy can move a
// rule between buckets:
//
//	| Policy list | Bucket  | Effect on exit code      |
//	|-------------|---------|--------------------------|
//	| BlockOn     | Error   | Non-zero at fail-on=error|
//	| WarnOn      | Warning | Non-zero at fail-on=warn |
//	| InfoOn      | Info    | Never fails              |
//	| Ignore      | dropped | Never reported           |
//
// # Usage
//
//	engine := lint.NewEngine(lint.WithRegistry(rules.DefaultRegistry()))
//
//	result, err := engine.Check(ctx, content, "src/app.js", lint.DefaultCheckOptions())
//	if err != nil {
//	    // Scan failed (size, encoding, cancellation)
//	}
//	if !result.Valid {
//	    // File has blocking issues
//	}
//
// # Thread Safety
//
// All exported types are safe for concurrent use.
package lint
