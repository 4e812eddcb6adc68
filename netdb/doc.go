/*

Package netdb holds the network database consulted by the query-processing code: the
ordered list of configured networks, each with a compiled hostname template and an
optional upstream resolver. The database is built once at startup from the configuration
file and is immutable thereafter, so lookups are safe from any number of concurrent
query go-routines without locking.

*/
package netdb
