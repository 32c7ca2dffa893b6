// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package watch provides a debounced file watcher for continuous linting.
//
// The watcher observes a directory tree for changes to JavaScript source
// files and delivers batched change notifications after a debounce window.
// Rapid editor save storms are collapsed into a single batch, and a rate
// limiter caps how often re-lint batches are dispatched.
package watch
