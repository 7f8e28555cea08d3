// Package purr implements the runtime core that compiled purr programs link
// against. It provides:
//   - The value model: nothing, booleans, numbers, strings, shelves
//     (persistent stacks), boxes (records), functions, clowders (class-like
//     templates) and their instances, and yarn balls (module export tables).
//   - Relation operators: Equal, Compare and the structural Equivalent.
//   - Single inheritance for clowders, with Outside() giving the parent's view
//     of an instance over the same bindings.
//   - JSON encoding and decoding that stays finite on cyclic boxes, and
//     Purrify for human-readable output.
//   - A Namespace that loads each registered yarn ball at most once.
//
// Failures are *Error values tagged with a closed set of ErrorCodes. The
// package never logs on its own; Runtime.Run is the boundary where a host
// observes uncaught failures.
package purr
