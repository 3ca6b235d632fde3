// Package dispatch maps shortcut names to compose invocations.
//
// Every shortcut is an entry in a Registry. An entry either renders one or
// more invocation templates and hands them to a compose.Backend, runs a
// builtin that only touches the host, or runs a fixed sequence of other
// entries. Adding a shortcut is a matter of adding a Command value to
// DefaultCommands.
//
// The caller argument is substituted into templates verbatim. It is not
// quoted or validated, so an argument can add words and flags to the
// in-container command. The rendered line is split into words with shell
// quoting rules and handed to the backend without a shell, so ; | & < >
// are passed to the container command as ordinary characters. Do not pass
// untrusted input through parameterized shortcuts.
package dispatch
