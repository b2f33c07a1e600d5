package contacts

// Access to internals for the tests in the contacts_test package.
var StackSubtype = stackSubtype
