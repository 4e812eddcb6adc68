/*

Package log provides the leveled logging used across dns-is-reverse. It is purposely
small: a single output writer, four levels and print/printf pairs for each level above
Silent. The
output writer is replaceable which is mostly of use to tests wanting to capture output.

*/
package log
