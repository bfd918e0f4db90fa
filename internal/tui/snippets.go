package tui

import "math/rand/v2"

// snippets seed the buffer when nothing else supplies text.
var snippets = []string{
	"import java.util.stream.IntStream;\n\nclass StreamExample {\n\tpublic static void main(String[] args) {\n\t\tIntStream.rangeClosed(1, 5).forEach(System.out::println);\n\t}\n}",
	"public class HelloWorld {\n\tpublic static void main(String[] args) {\n\t\tSystem.out.println(\"Hello, World!\");\n\t}\n}",
	"class Fibonacci {\n\tpublic static int fib(int n) {\n\t\tif(n <= 1) return n;\n\t\treturn fib(n-1) + fib(n-2);\n\t}\n}",
	"class SumExample {\n\tpublic static void main(String[] args) {\n\t\tint sum = 0;\n\t\tfor(int i=1;i<=10;i++){ sum += i; }\n\t\tSystem.out.println(sum);\n\t}\n}",
	"using System;\nusing System.Linq;\n\nclass LINQExample {\n\tstatic void Main() {\n\t\tint[] numbers = { 3, 9, 2, 8, 6 };\n\t\tvar evenNumbers = numbers.Where(n => n % 2 == 0);\n\t\tforeach (var num in evenNumbers) {\n\t\t\tConsole.WriteLine(num);\n\t\t}\n\t}\n}",
}

// Snippet returns one of the built-in snippets at random.
func Snippet() string {
	return snippets[rand.IntN(len(snippets))]
}
