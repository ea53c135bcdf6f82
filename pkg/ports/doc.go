/*
Package ports defines the driven ports (interfaces) for the Cambium engine.

The dispatcher never reads or writes a subject's state directly; it goes
through a StateAccessor. Swapping the accessor is how the same machine tracks
state on a struct field, a map key, or anything else a host application uses.
*/
package ports
