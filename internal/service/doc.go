// Package service contains the use cases of the exam-practice core. It
// coordinates the test catalog, the attempt session store, the scorer and
// the persisted collections to run test attempts and serve history.
//
// Key components:
//
// 1. ExamService:
//   - Starts an attempt for a test and records it in the caller's session
//   - Grades a submission against the session's attempt and records the result
//
// 2. ResultService:
//   - Appends results to the practice or mock collection
//   - Serves per-user history joined with test metadata
//
// 3. ProgressService and VocabularyService:
//   - Track learned words per user
//   - Look up, filter and import the medical vocabulary
//
// 4. UserService:
//   - Registers and authenticates accounts used by the identity provider
//
// Services receive dependencies through constructor injection and never
// depend on a concrete storage backend.
package service
