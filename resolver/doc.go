/*

Package resolver implements the upstream delegation client. When a network is configured
"with upstream", each PTR query for that network is first offered to the operator's
nominated resolver; only if the upstream declines - NXDomain, an empty answer, a timeout
or any kind of exchange error - does the server fall back to local synthesis.

The Resolver interface exists mainly so tests can substitute their own implementation
without a network in sight.

*/
package resolver
