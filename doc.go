/*
Package deso builds, serializes and gets signed transactions for a DeSo
node without the calling application ever holding a private key.

The package has two halves. The first is a declarative binary codec: every
wire record (transaction envelope, per-type metadata, extra data) is a Go
struct paired with a static, ordered field schema, and the node's canonical
bytes are derived from that schema. The second is a signing bridge that
hands unsigned bytes to an isolated key-custody context, correlates its
asynchronous answer and keeps the logged-in session across restarts.

Networking with the node itself lives in the rpcclient sub package.
*/

package deso
