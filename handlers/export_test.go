package handlers

// SessionStudentID exposes sessionStudentID to external tests.
var SessionStudentID = sessionStudentID
