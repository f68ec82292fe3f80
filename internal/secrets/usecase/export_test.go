package usecase

// IsMissingTable exposes isMissingTable to the external test package.
var IsMissingTable = isMissingTable
