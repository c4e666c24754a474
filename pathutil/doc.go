// Package pathutil finds the programs named by browser and reader commands.
//
// Registry commands usually carry a full path such as
// C:\Program Files\Mozilla Firefox\firefox.exe, while hand-written commands
// often name a program like firefox and rely on PATH. FindProgram handles
// both:
//
//	if path, ok := pathutil.FindProgram(argv.Program()); !ok {
//	    fmt.Printf("%s not found\n", path)
//	}
//
// On Windows a bare name gets .exe appended before the PATH search.
package pathutil
