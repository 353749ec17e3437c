/*
Package tree implements a simple generic tree of mutable nodes.

Entities participating in layout resolution form a hierarchy, mirroring the
document they are attached to. Package tree provides the parent/children
bookkeeping for this hierarchy; higher level types embed a Node and reference
themselves as the payload.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree
