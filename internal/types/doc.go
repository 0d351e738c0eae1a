/*
Package types defines the data structures shared by textlens packages.

# Overview

The types package mirrors the wire format of the text-analysis API:
  - AnalysisRequest / AnalysisResult for the analyze endpoint
  - HistoryFilter / HistoryEntry / HistoryPage for the history endpoint
  - HealthStatus for the health endpoint
  - TLSConfig for the API connection

# Optional Fields

The server may omit any field of an analysis. Optional members are pointers
(or nil slices) so that "absent" and "zero" stay distinguishable; the
analysis package turns them into display strings.

HistoryFilter uses plain strings: an empty value means the constraint is
absent, which matches how the server echoes applied filters (null or
missing).
*/
package types
