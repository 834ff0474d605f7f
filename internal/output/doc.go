// Copyright 2025 Rod Vagg
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package output renders aggregation and health results for consumption.
// Two formats are supported: NDJSON for machine consumers, and a colorized
// console summary for humans.
//
// The NDJSON Writer is thread-safe and streams each record as it is
// written, so large result sets never accumulate in memory. The console
// renderer is a terminal-friendly view over the same data and is not
// intended to be parsed.
package output
