/*
Package domain holds the core data model of the Cambium state machine engine.

A Machine owns a set of State records collected while it is in the Building
lifecycle. Each State may declare Transitions, each carrying the names of the
states it is allowed to move to. Calling Complete() validates the whole graph
exactly once (name and slug uniqueness, output-state resolution) and locks the
machine: from then on the state set is frozen and read-only.

States reference each other through the machine's own index, never through the
authoring API, so a completed machine can be shared freely across readers.
*/
package domain
