// Package directoryservice owns employee profiles inside the workforce
// context: registration, updates, and activation state. It holds no
// credentials; authentication lives outside this repository.
//
// Other contexts never import this module directly. The attendance service
// reads profiles through its own EmployeeDirectory port, bridged in the
// composition root.
package directoryservice
